package models

import (
	"strconv"
	"strings"
)

// IndividualID is the stable identifier of a person taken from the source file.
// The zero value means "absent" (an unknown parent slot).
type IndividualID int

// NoIndividual marks an absent parent in a family key or parent pair.
const NoIndividual IndividualID = 0

// Known reports whether the id refers to a person.
func (id IndividualID) Known() bool {
	return id != NoIndividual
}

func (id IndividualID) String() string {
	return strconv.Itoa(int(id))
}

// Name is the (surname, given) pair used for sorting and searching.
type Name struct {
	Surname string
	Given   string
}

// Display renders the name as "Given Surname".
func (n Name) Display() string {
	return strings.TrimSpace(strings.TrimSpace(n.Given) + " " + strings.TrimSpace(n.Surname))
}

// IsEmpty reports whether both halves of the name are blank.
func (n Name) IsEmpty() bool {
	return strings.TrimSpace(n.Surname) == "" && strings.TrimSpace(n.Given) == ""
}

// Fact is an event or attribute attached to a person or a union.
type Fact struct {
	Tag   string
	Type  string
	Value string
	Date  string
	Place string
}

// SourceRef points at a source citation.
type SourceRef struct {
	ID    string
	Title string
	Page  string
}

// ParentPair is a (father, mother) pair where either side may be absent.
type ParentPair struct {
	Father IndividualID
	Mother IndividualID
}

// HasKnownParent reports whether at least one side is present.
func (p ParentPair) HasKnownParent() bool {
	return p.Father.Known() || p.Mother.Known()
}

// Individual is a consolidated person in the tree.
//
// OriginFamilies and ParentPairs are ordered. The first entry of each is the
// preferred origin: the first family of origin recorded on the person in source
// order. Families that list the person as a child without the person pointing
// back at them follow, ordered by family sequence number.
type Individual struct {
	ID             IndividualID
	Name           Name
	Sex            string
	OriginFamilies []FamilyKey
	ParentPairs    []ParentPair
	SpouseFamilies []FamilyKey
	Facts          []Fact
	Notes          []string
	Sources        []SourceRef
}

// PreferredParents returns the parent pair used by pedigree traversal.
func (i *Individual) PreferredParents() (ParentPair, bool) {
	if len(i.ParentPairs) == 0 {
		return ParentPair{}, false
	}
	return i.ParentPairs[0], true
}

// HasOriginFamily reports whether key is already recorded as a family of origin.
func (i *Individual) HasOriginFamily(key FamilyKey) bool {
	for _, k := range i.OriginFamilies {
		if k == key {
			return true
		}
	}
	return false
}

// HasParentPair reports whether pair is already recorded.
func (i *Individual) HasParentPair(pair ParentPair) bool {
	for _, p := range i.ParentPairs {
		if p == pair {
			return true
		}
	}
	return false
}
