package dandy

// LocateMatch finds the first value in tree (in the order of Visit) which is equal to value.
// The value at excluding and everything below it is never considered.
func LocateMatch(tree, value interface{}, excluding Path) (Path, bool) {
	result, ok := Visit(tree, func(path Path, node interface{}) Action {
		if path.HasPrefix(excluding) {
			return Skip
		}
		if sameShape(node, value) && Equal(node, value) {
			return Stop(path.Clone())
		}
		return Descend
	})
	if !ok {
		return nil, false
	}
	return result.(Path), true
}
