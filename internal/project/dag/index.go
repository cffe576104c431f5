package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"hsfront/internal/project"
)

type ModuleID uint32

// ModuleIndex numbers the modules defined by the parsed files. Imported
// modules without a file (base, containers, ...) are external and get no id.
type ModuleIndex struct {
	NameToID map[string]ModuleID
	IDToName []string
}

// BuildIndex assigns ids in name order.
func BuildIndex(metas []project.ModuleMeta) ModuleIndex {
	names := make([]string, 0, len(metas))
	for _, meta := range metas {
		if meta.Name != "" && !slices.Contains(names, meta.Name) {
			names = append(names, meta.Name)
		}
	}
	slices.Sort(names)

	idx := ModuleIndex{NameToID: make(map[string]ModuleID, len(names)), IDToName: names}
	for i, name := range names {
		id, err := safecast.Conv[ModuleID](i)
		if err != nil {
			panic(fmt.Errorf("module id overflow: %w", err))
		}
		idx.NameToID[name] = id
	}
	return idx
}

func (idx ModuleIndex) Names(ids []ModuleID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[id]
	}
	return out
}
