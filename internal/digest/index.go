package digest

// Index maps a digest to the positions (in insertion order) of the entries carrying it.
type Index struct {
	Data map[Hash][]int
}

func NewIndex(hashes []Hash) *Index {
	index := &Index{
		Data: make(map[Hash][]int, len(hashes)),
	}

	for idx, h := range hashes {
		index.Data[h] = append(index.Data[h], idx)
	}

	return index
}

// Contains reports whether any entry carries h.
func (index *Index) Contains(h Hash) bool {
	return len(index.Data[h]) > 0
}
