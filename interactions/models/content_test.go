// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContentKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseContentKind(string(kind))
		assert.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	for _, raw := range []string{"", "post", "CORE_STORY", "core-story"} {
		_, err := ParseContentKind(raw)
		assert.Error(t, err, "kind %q must not parse", raw)
	}
}

func TestKindTablesMappingIsComplete(t *testing.T) {
	seen := map[string]bool{}

	for _, kind := range Kinds() {
		tables := kind.Tables()

		assert.NotEmpty(t, tables.ContentTable)
		assert.NotEmpty(t, tables.LikeTable)
		assert.NotEmpty(t, tables.CommentTable)
		assert.NotEmpty(t, tables.ReactionTable)
		assert.NotEmpty(t, tables.JoinColumn)

		// No two kinds may share a table
		for _, name := range []string{tables.ContentTable, tables.LikeTable, tables.CommentTable, tables.ReactionTable} {
			assert.False(t, seen[name], "table %q mapped twice", name)
			seen[name] = true
		}
	}
}

func TestTablesPanicsOnUnknownKind(t *testing.T) {
	assert.Panics(t, func() {
		ContentKind("gym").Tables()
	})
}

func TestParseReactionType(t *testing.T) {
	for _, reaction := range ReactionTypes() {
		parsed, err := ParseReactionType(string(reaction))
		assert.NoError(t, err)
		assert.Equal(t, reaction, parsed)
	}

	for _, raw := range []string{"", "like", "ME_TOO", "metoo"} {
		_, err := ParseReactionType(raw)
		assert.Error(t, err, "reaction %q must not parse", raw)
	}
}
