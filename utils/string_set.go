package utils

import "sort"

type StringSet map[string]bool

func NewStringSet(elements ...string) StringSet {
	set := make(StringSet)
	for _, element := range elements {
		set.Add(element)
	}
	return set
}

func (ss StringSet) Add(element string) {
	ss[element] = true
}

func (ss StringSet) Contains(element string) bool {
	return ss[element]
}

// Sorted returns the elements in ascending order
func (ss StringSet) Sorted() []string {
	elements := make([]string, 0, len(ss))
	for element := range ss {
		elements = append(elements, element)
	}
	sort.Strings(elements)
	return elements
}
