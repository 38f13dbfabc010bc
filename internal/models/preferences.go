package models

import "sort"

// Field names a user-settable preference attribute. The value is the JSON
// name used on the wire and the attribute name used in DynamoDB.
type Field string

const (
	FieldTheme          Field = "theme"
	FieldDisplayName    Field = "displayName"
	FieldDisplayPicture Field = "displayPicture"
)

// Fields lists every recognized preference field.
var Fields = []Field{FieldTheme, FieldDisplayName, FieldDisplayPicture}

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	DisplayNameMaxLength    = 100
	DisplayPictureMaxLength = 1024
)

// UserPreferences is the preferences record of one subject. UserID is the
// store key and never serialized to clients.
type UserPreferences struct {
	UserID         string  `json:"-"`
	Theme          *string `json:"theme"`
	DisplayName    *string `json:"displayName"`
	DisplayPicture *string `json:"displayPicture"`
}

// DefaultPreferences is returned for subjects that never wrote preferences.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{UserID: userID}
}

func (p *UserPreferences) Get(f Field) *string {
	switch f {
	case FieldTheme:
		return p.Theme
	case FieldDisplayName:
		return p.DisplayName
	case FieldDisplayPicture:
		return p.DisplayPicture
	}
	return nil
}

func (p *UserPreferences) set(f Field, v *string) {
	switch f {
	case FieldTheme:
		p.Theme = v
	case FieldDisplayName:
		p.DisplayName = v
	case FieldDisplayPicture:
		p.DisplayPicture = v
	}
}

// PreferencesUpdate is the validated shape of a PUT /user/preferences body.
// A nil pointer means the field was absent or explicitly null; PreferencesPatch
// tracks which of the two it was.
type PreferencesUpdate struct {
	Theme          *string `json:"theme" validate:"omitnil,oneof=light dark system"`
	DisplayName    *string `json:"displayName" validate:"omitnil,max=100"`
	DisplayPicture *string `json:"displayPicture" validate:"omitnil,max=1024"`
}

// PreferencesPatch is a partial update: fields in Set are assigned, fields
// in Clear are removed, every other field is left untouched.
type PreferencesPatch struct {
	Set   map[Field]string
	Clear []Field
}

func (p PreferencesPatch) IsEmpty() bool {
	return len(p.Set) == 0 && len(p.Clear) == 0
}

// SetFields returns the assigned fields in a stable order.
func (p PreferencesPatch) SetFields() []Field {
	fields := make([]Field, 0, len(p.Set))
	for f := range p.Set {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Apply merges the patch into prefs in place.
func (p PreferencesPatch) Apply(prefs *UserPreferences) {
	for f, v := range p.Set {
		value := v
		prefs.set(f, &value)
	}
	for _, f := range p.Clear {
		prefs.set(f, nil)
	}
}
