// Package surname groups individuals by surname.
package surname

import "gimm/internal/genealogy/models"

// Entry is one distinct surname with its bearers in index order.
type Entry struct {
	Surname string
	Bearers []*models.Individual
}

// Count is the number of bearers.
func (e Entry) Count() int {
	return len(e.Bearers)
}

// Build groups the tree's individuals by exact surname. Because the tree's
// index order is sorted by surname first, entries come out sorted by surname
// and bearers keep index order. Individuals without a surname form the entry
// with an empty Surname, which sorts first.
func Build(tree *models.Tree) []Entry {
	var entries []Entry
	for _, ind := range tree.Sorted() {
		n := len(entries)
		if n > 0 && entries[n-1].Surname == ind.Name.Surname {
			entries[n-1].Bearers = append(entries[n-1].Bearers, ind)
			continue
		}
		entries = append(entries, Entry{Surname: ind.Name.Surname, Bearers: []*models.Individual{ind}})
	}
	return entries
}
