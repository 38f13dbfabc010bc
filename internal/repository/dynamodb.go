package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/GunarsK-portfolio/profile-api/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	attrUserID    = "user_id"
	attrUpdatedAt = "updatedAt"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by the repository.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type preferencesItem struct {
	UserID         string  `dynamodbav:"user_id"`
	Theme          *string `dynamodbav:"theme,omitempty"`
	DisplayName    *string `dynamodbav:"displayName,omitempty"`
	DisplayPicture *string `dynamodbav:"displayPicture,omitempty"`
	UpdatedAt      string  `dynamodbav:"updatedAt,omitempty"`
}

type dynamoRepository struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDB(client DynamoDBAPI, table string) Repository {
	return &dynamoRepository{client: client, table: table}
}

func (r *dynamoRepository) key(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrUserID: &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *dynamoRepository) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            r.key(userID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences for %s: %w", userID, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var item preferencesItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to decode preferences for %s: %w", userID, err)
	}
	return item.toModel(), nil
}

// UpsertPreferences uses a single UpdateItem with SET/REMOVE clauses for
// the patched attributes only; DynamoDB creates the item when absent.
func (r *dynamoRepository) UpsertPreferences(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.UserPreferences, error) {
	update := expression.Set(expression.Name(attrUpdatedAt), expression.Value(time.Now().UTC().Format(time.RFC3339Nano)))
	for _, f := range patch.SetFields() {
		update = update.Set(expression.Name(string(f)), expression.Value(patch.Set[f]))
	}
	for _, f := range patch.Clear {
		update = update.Remove(expression.Name(string(f)))
	}

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(userID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert preferences for %s: %w", userID, err)
	}

	var item preferencesItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, fmt.Errorf("failed to decode preferences for %s: %w", userID, err)
	}
	if item.UserID == "" {
		item.UserID = userID
	}
	return item.toModel(), nil
}

func (r *dynamoRepository) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	return err
}

func (item preferencesItem) toModel() *models.UserPreferences {
	return &models.UserPreferences{
		UserID:         item.UserID,
		Theme:          item.Theme,
		DisplayName:    item.DisplayName,
		DisplayPicture: item.DisplayPicture,
	}
}
