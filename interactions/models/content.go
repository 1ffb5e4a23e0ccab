// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"fmt"

	uuid "github.com/gofrs/uuid"
)

// ContentKind identifies which kind of biography content an interaction
// targets. It is a closed set: adding a new kind means adding a constant
// and one entry to kindTables below.
type ContentKind string

const (
	KindCoreStory ContentKind = "core_story"
	KindOneLiner  ContentKind = "one_liner"
	KindStory     ContentKind = "story"
)

// KindTables resolves the concrete table and column names for a content kind.
// The join column is the foreign-key column used by the like, comment and
// reaction tables of that kind.
type KindTables struct {
	ContentTable  string
	LikeTable     string
	CommentTable  string
	ReactionTable string
	JoinColumn    string
}

var kindTables = map[ContentKind]KindTables{
	KindCoreStory: {
		ContentTable:  "biography_core_stories",
		LikeTable:     "core_story_likes",
		CommentTable:  "core_story_comments",
		ReactionTable: "core_story_reactions",
		JoinColumn:    "core_story_id",
	},
	KindOneLiner: {
		ContentTable:  "biography_one_liners",
		LikeTable:     "one_liner_likes",
		CommentTable:  "one_liner_comments",
		ReactionTable: "one_liner_reactions",
		JoinColumn:    "one_liner_id",
	},
	KindStory: {
		ContentTable:  "biography_stories",
		LikeTable:     "story_likes",
		CommentTable:  "story_comments",
		ReactionTable: "story_reactions",
		JoinColumn:    "story_id",
	},
}

// ParseContentKind validates a raw kind tag (e.g. from a URL segment).
func ParseContentKind(raw string) (ContentKind, error) {
	kind := ContentKind(raw)
	if _, ok := kindTables[kind]; !ok {
		return "", fmt.Errorf("unknown content kind: %q", raw)
	}
	return kind, nil
}

// Tables returns the table mapping for the kind. The kind must have been
// validated with ParseContentKind; unknown kinds panic to catch programming
// errors early rather than producing malformed SQL.
func (k ContentKind) Tables() KindTables {
	tables, ok := kindTables[k]
	if !ok {
		panic(fmt.Sprintf("unmapped content kind: %q", k))
	}
	return tables
}

// Kinds returns all known content kinds.
func Kinds() []ContentKind {
	return []ContentKind{KindCoreStory, KindOneLiner, KindStory}
}

// ReactionType is a quick reaction a user can toggle on content. A user may
// hold several reaction types on the same content, but at most one row per
// type.
type ReactionType string

const (
	ReactionMeToo    ReactionType = "me_too"
	ReactionPlusOne  ReactionType = "plus_one"
	ReactionWellSaid ReactionType = "well_said"
)

// ParseReactionType validates a raw reaction tag.
func ParseReactionType(raw string) (ReactionType, error) {
	switch ReactionType(raw) {
	case ReactionMeToo, ReactionPlusOne, ReactionWellSaid:
		return ReactionType(raw), nil
	}
	return "", fmt.Errorf("unknown reaction type: %q", raw)
}

// ReactionTypes returns all known reaction types.
func ReactionTypes() []ReactionType {
	return []ReactionType{ReactionMeToo, ReactionPlusOne, ReactionWellSaid}
}

// Like represents one user's like on one piece of content. The
// (content, user) pair is unique at the database layer.
type Like struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ContentID uuid.UUID `json:"contentId" db:"content_id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt int64     `json:"createdAt" db:"created_at"`
}

// Comment represents a comment row as stored. ParentID is nil for root
// comments; one level of threading is supported.
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ContentID uuid.UUID  `json:"contentId" db:"content_id"`
	UserID    uuid.UUID  `json:"userId" db:"user_id"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" db:"parent_id"`
	Text      string     `json:"text" db:"text"`
	CreatedAt int64      `json:"createdAt" db:"created_at"`
}

// CommentWithAuthor is a comment joined with the author's display fields.
type CommentWithAuthor struct {
	Comment
	Username    string `json:"username" db:"username"`
	DisplayName string `json:"displayName" db:"display_name"`
	AvatarURL   string `json:"avatarUrl" db:"avatar_url"`
}

// Reaction represents one user's reaction of one type on one piece of
// content. The (content, user, type) triple is unique at the database layer.
type Reaction struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	ContentID uuid.UUID    `json:"contentId" db:"content_id"`
	UserID    uuid.UUID    `json:"userId" db:"user_id"`
	Type      ReactionType `json:"type" db:"reaction_type"`
	CreatedAt int64        `json:"createdAt" db:"created_at"`
}

// ReactionCounts carries the denormalized per-type counters of one content
// row. The counters are a cache of COUNT(*) over the reaction table, never
// independently authoritative.
type ReactionCounts struct {
	MeToo    int `json:"me_too" db:"me_too_count"`
	PlusOne  int `json:"plus_one" db:"plus_one_count"`
	WellSaid int `json:"well_said" db:"well_said_count"`
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// ReactionResult is the outcome of a reaction toggle.
type ReactionResult struct {
	Reacted bool           `json:"reacted"`
	Counts  ReactionCounts `json:"counts"`
}

// LikeStatus annotates a content id with the viewer's like state. Used by
// list endpoints to avoid N+1 existence checks.
type LikeStatus struct {
	ContentID uuid.UUID `json:"contentId"`
	IsLiked   bool      `json:"isLiked"`
}

// ReactionStatus annotates a content id with the viewer's reaction types.
type ReactionStatus struct {
	ContentID uuid.UUID      `json:"contentId"`
	Reactions []ReactionType `json:"userReactions"`
}
