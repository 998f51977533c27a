package console

func applyOrderOverride(panels []PanelInstance, order []string) []PanelInstance {
	if len(order) == 0 {
		return panels
	}
	index := make(map[string]PanelInstance, len(panels))
	for _, p := range panels {
		index[p.ID] = p
	}
	result := make([]PanelInstance, 0, len(panels))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if p, ok := index[id]; ok {
			result = append(result, p)
			seen[id] = struct{}{}
		}
	}
	for _, p := range panels {
		if _, ok := seen[p.ID]; !ok {
			result = append(result, p)
		}
	}
	return result
}

func applyHiddenFilter(panels []PanelInstance, hidden map[string]bool) []PanelInstance {
	if len(hidden) == 0 {
		return panels
	}
	result := make([]PanelInstance, 0, len(panels))
	for _, p := range panels {
		if hidden[p.ID] {
			continue
		}
		result = append(result, p)
	}
	return result
}
