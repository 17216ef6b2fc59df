package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// TagSeparator joins a space's tags into its single tags column.
const TagSeparator = ","

// Space is a tagged, categorized project record linked to a code repository.
type Space struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	SpaceName     string                      `json:"space_name" gorm:"type:varchar(255);not null;index"`
	Tags          string                      `json:"-" gorm:"type:text;not null"`
	Category      string                      `json:"category" gorm:"type:varchar(255);not null"`
	GithubID      string                      `json:"github_id" gorm:"type:varchar(255);not null"`
	Description   string                      `json:"description" gorm:"type:text;not null"`
	Collaborators datatypes.JSONSlice[string] `json:"collaborators"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// JoinTags flattens tags into the stored form. A tag containing the
// separator is indistinguishable from two tags once reloaded.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}

// TagList splits the stored tags column back into a list.
func (s Space) TagList() []string {
	if s.Tags == "" {
		return []string{}
	}
	return strings.Split(s.Tags, TagSeparator)
}
