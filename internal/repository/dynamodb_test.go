package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/GunarsK-portfolio/profile-api/internal/models"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type mockDynamoDB struct {
	getItemFunc       func(ctx context.Context, in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	updateItemFunc    func(ctx context.Context, in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	describeTableFunc func(ctx context.Context, in *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error)
}

func (m *mockDynamoDB) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.getItemFunc != nil {
		return m.getItemFunc(ctx, in)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (m *mockDynamoDB) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if m.updateItemFunc != nil {
		return m.updateItemFunc(ctx, in)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *mockDynamoDB) DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if m.describeTableFunc != nil {
		return m.describeTableFunc(ctx, in)
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func TestDynamoDB_GetPreferences_Missing(t *testing.T) {
	repo := NewDynamoDB(&mockDynamoDB{}, "preferences")

	_, err := repo.GetPreferences(context.Background(), "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDynamoDB_GetPreferences_Found(t *testing.T) {
	var captured *dynamodb.GetItemInput
	client := &mockDynamoDB{
		getItemFunc: func(_ context.Context, in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			captured = in
			return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"user_id":     &types.AttributeValueMemberS{Value: "user-1"},
				"theme":       &types.AttributeValueMemberS{Value: "dark"},
				"displayName": &types.AttributeValueMemberS{Value: "Ada"},
			}}, nil
		},
	}
	repo := NewDynamoDB(client, "preferences")

	got, err := repo.GetPreferences(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *captured.TableName != "preferences" {
		t.Errorf("expected table preferences, got %s", *captured.TableName)
	}
	key, ok := captured.Key["user_id"].(*types.AttributeValueMemberS)
	if !ok || key.Value != "user-1" {
		t.Errorf("expected key user_id=user-1, got %v", captured.Key)
	}
	if got.UserID != "user-1" || *got.Theme != "dark" || *got.DisplayName != "Ada" || got.DisplayPicture != nil {
		t.Errorf("unexpected preferences %+v", got)
	}
}

func TestDynamoDB_GetPreferences_Error(t *testing.T) {
	client := &mockDynamoDB{
		getItemFunc: func(_ context.Context, _ *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	repo := NewDynamoDB(client, "preferences")

	_, err := repo.GetPreferences(context.Background(), "user-1")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestDynamoDB_UpsertPreferences_SetsAndRemovesOnlyPatchedFields(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	client := &mockDynamoDB{
		updateItemFunc: func(_ context.Context, in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			captured = in
			return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
				"user_id":     &types.AttributeValueMemberS{Value: "user-1"},
				"theme":       &types.AttributeValueMemberS{Value: "dark"},
				"displayName": &types.AttributeValueMemberS{Value: "Ada"},
			}}, nil
		},
	}
	repo := NewDynamoDB(client, "preferences")

	got, err := repo.UpsertPreferences(context.Background(), "user-1", models.PreferencesPatch{
		Set:   map[models.Field]string{models.FieldTheme: "dark"},
		Clear: []models.Field{models.FieldDisplayPicture},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.ReturnValues != types.ReturnValueAllNew {
		t.Errorf("expected ALL_NEW return values, got %s", captured.ReturnValues)
	}
	update := *captured.UpdateExpression
	if !strings.Contains(update, "SET") || !strings.Contains(update, "REMOVE") {
		t.Errorf("expected SET and REMOVE clauses, got %q", update)
	}

	names := make(map[string]bool)
	for _, n := range captured.ExpressionAttributeNames {
		names[n] = true
	}
	for _, want := range []string{"theme", "displayPicture", "updatedAt"} {
		if !names[want] {
			t.Errorf("expected attribute %s in expression names %v", want, captured.ExpressionAttributeNames)
		}
	}
	if names["displayName"] {
		t.Error("displayName was not patched and must not appear in the update")
	}

	if *got.Theme != "dark" || *got.DisplayName != "Ada" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestDynamoDB_Ping(t *testing.T) {
	client := &mockDynamoDB{
		describeTableFunc: func(_ context.Context, in *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error) {
			if *in.TableName != "preferences" {
				t.Errorf("expected table preferences, got %s", *in.TableName)
			}
			return nil, errors.New("not reachable")
		},
	}
	repo := NewDynamoDB(client, "preferences")

	if err := repo.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}
