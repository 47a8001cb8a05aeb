// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  Answer   text\nacross lines  ", "Answer text across lines"},
		{"link markup", "Read [the guide](https://x.edu/guide) first.", "Read the guide first."},
		{"bare url", "Visit https://x.edu/apply for details.", "Visit for details."},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanAnswer(tt.raw))
		})
	}
}

func TestLinks(t *testing.T) {
	assert.Nil(t, Links("no links in here"))
	assert.Equal(t,
		[]string{"https://a.edu/x", "http://b.edu/y"},
		Links("[a](https://a.edu/x), see also <http://b.edu/y>; and https://a.edu/x."),
	)
	assert.Nil(t, Links("[relative](/advising) only"))
}

func TestKeywords(t *testing.T) {
	got := Keywords("Portfolio review: the portfolio needs five projects. Projects should show process, process, process.")
	assert.Equal(t, []string{"process", "portfolio", "projects", "review", "needs"}, got)
	assert.Nil(t, Keywords("a an the"))
}
