package commentservice

// BuildThread assembles a flat, creation-ordered row slice into a forest.
// One pass fills an id-keyed arena, a second attaches each node to its
// parent's reply list. A node whose parent id resolves to nothing is
// dropped; such rows only appear if something outside this service wrote
// them.
func BuildThread(rows []*Comment) []*Comment {
	byID := make(map[string]*Comment, len(rows))
	for _, c := range rows {
		c.Replies = []*Comment{}
		c.IsDeleted = c.Author == nil && c.Content == nil
		byID[c.ID] = c
	}

	roots := []*Comment{}
	for _, c := range rows {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}

	return roots
}
