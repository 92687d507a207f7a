// Package quotes defines the feed item model and the content source
// synchronizer that produces the authoritative quote set for a session.
package quotes

import (
	"fmt"
	"strings"
)

// Quote is a single feed content unit. Identity is ID; two quotes with the
// same ID are the same quote, and the first occurrence seen wins.
type Quote struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Author string   `json:"author,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// HasTag reports whether q carries tag, compared case-insensitively.
func (q Quote) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ShareText formats q for the share sheet.
func ShareText(q Quote) string {
	if q.Author != "" {
		return fmt.Sprintf("\"%s\" — %s", q.Text, q.Author)
	}
	return fmt.Sprintf("\"%s\"", q.Text)
}

// IDSet returns the set of identifiers present in qs.
func IDSet(qs []Quote) map[string]bool {
	ids := make(map[string]bool, len(qs))
	for _, q := range qs {
		ids[q.ID] = true
	}
	return ids
}

// Samples is the built-in quote list, used when no remote source is
// configured or when both the fetch and the cache come up empty.
var Samples = []Quote{
	{ID: "1", Text: "I'm not arguing, I'm just explaining why I'm right.", Author: "Anonymous", Tags: []string{"savage", "funny"}},
	{ID: "2", Text: "My wallet is like an onion. Opening it makes me cry.", Author: "Unknown", Tags: []string{"money", "relatable"}},
	{ID: "3", Text: "I'm on a seafood diet. I see food and I eat it.", Author: "Anonymous", Tags: []string{"food", "funny"}},
	{ID: "4", Text: "I don't need anger management. You need to stop making me mad.", Author: "Unknown", Tags: []string{"savage"}},
	{ID: "5", Text: "Common sense is like deodorant. People who need it most never use it.", Author: "Anonymous", Tags: []string{"savage", "truth"}},
	{ID: "6", Text: "My bed is a magical place where I suddenly remember everything I forgot to do.", Author: "Unknown", Tags: []string{"relatable", "funny"}},
	{ID: "7", Text: "I'm not lazy. I'm just on energy-saving mode.", Author: "Anonymous", Tags: []string{"lazy", "funny"}},
	{ID: "8", Text: "Silence is golden. Unless you have kids. Then silence is suspicious.", Author: "Unknown", Tags: []string{"parenting", "truth"}},
	{ID: "9", Text: "I followed my heart and it led me to the fridge.", Author: "Anonymous", Tags: []string{"food", "relatable"}},
	{ID: "10", Text: "I'm not short. I'm concentrated awesome.", Author: "Unknown", Tags: []string{"savage", "funny"}},
	{ID: "11", Text: "Some days I amaze myself. Other days I look for my phone while holding it.", Author: "Anonymous", Tags: []string{"relatable", "funny"}},
	{ID: "12", Text: "I'm not bossy. I just know what you should be doing.", Author: "Unknown", Tags: []string{"savage"}},
}
