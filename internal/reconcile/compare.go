package reconcile

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// CompareResult holds the outcome of comparing the immediate subdirectories of
// two roots. Files are ignored; identity is the child's name only.
type CompareResult struct {
	DirA string `json:"dir_a"`
	DirB string `json:"dir_b"`

	Duplicates    []string `json:"duplicates"`
	NonDuplicates []string `json:"non_duplicates"`

	DuplicateCount    int `json:"duplicate_count"`
	NonDuplicateCount int `json:"non_duplicate_count"`
	TotalA            int `json:"total_a_subdirectories"`
	TotalB            int `json:"total_b_subdirectories"`
}

// CompareDirs lists the immediate subdirectory names of both roots and
// computes duplicates (present in both) and non-duplicates (present in A
// only). Read-only; the only failure mode is a missing or unreadable root.
func CompareDirs(rootA, rootB string) (*CompareResult, error) {
	if err := checkRoot(rootA); err != nil {
		return nil, err
	}
	if err := checkRoot(rootB); err != nil {
		return nil, err
	}

	namesA, err := subdirNames(rootA)
	if err != nil {
		return nil, &RootError{Root: rootA, Err: err}
	}
	namesB, err := subdirNames(rootB)
	if err != nil {
		return nil, &RootError{Root: rootB, Err: err}
	}

	setA := mapset.NewThreadUnsafeSet(namesA...)
	setB := mapset.NewThreadUnsafeSet(namesB...)

	duplicates := setA.Intersect(setB).ToSlice()
	nonDuplicates := setA.Difference(setB).ToSlice()
	sort.Strings(duplicates)
	sort.Strings(nonDuplicates)

	return &CompareResult{
		DirA:              rootA,
		DirB:              rootB,
		Duplicates:        duplicates,
		NonDuplicates:     nonDuplicates,
		DuplicateCount:    len(duplicates),
		NonDuplicateCount: len(nonDuplicates),
		TotalA:            len(namesA),
		TotalB:            len(namesB),
	}, nil
}
