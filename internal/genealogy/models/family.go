package models

import "fmt"

// FamilyKey identifies a canonical union by its ordered (father, mother) pair.
// Raw records that share a key collapse into one Family.
type FamilyKey struct {
	Father IndividualID
	Mother IndividualID
}

// Pair converts the key into the parent pair its children descend from.
func (k FamilyKey) Pair() ParentPair {
	return ParentPair{Father: k.Father, Mother: k.Mother}
}

// Spouse returns the other partner of id in the union, or NoIndividual.
func (k FamilyKey) Spouse(id IndividualID) IndividualID {
	switch id {
	case k.Father:
		return k.Mother
	case k.Mother:
		return k.Father
	default:
		return NoIndividual
	}
}

func (k FamilyKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.Father, k.Mother)
}

// Family is a consolidated parental union.
type Family struct {
	Key FamilyKey
	// Seq is assigned when the first raw record with this key is merged and never changes.
	Seq int
	// DisplayNumber starts as Seq and is replaced by each non-zero raw record number.
	DisplayNumber int
	Children      []IndividualID
	Facts         []Fact
	Notes         []string
	Sources       []SourceRef
	Sealed        bool
}

// HasChild reports whether id is among the union's children.
func (f *Family) HasChild(id IndividualID) bool {
	for _, c := range f.Children {
		if c == id {
			return true
		}
	}
	return false
}
