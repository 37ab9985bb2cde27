package view

import (
	"github.com/viperproject/viper-ide-sub004/internal/model"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
)

// TermView is the display projection of a term.
type TermView struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
	Sort string `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// ChunkView is the display projection of a heap chunk. Terms are rendered.
type ChunkView struct {
	Kind          string   `json:"kind" yaml:"kind"`
	Resource      string   `json:"resource" yaml:"resource"`
	Text          string   `json:"text" yaml:"text"`
	Sort          string   `json:"sort,omitempty" yaml:"sort,omitempty"`
	Receiver      string   `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Args          []string `json:"args,omitempty" yaml:"args,omitempty"`
	Vars          []string `json:"vars,omitempty" yaml:"vars,omitempty"`
	Snapshot      string   `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Function      string   `json:"function,omitempty" yaml:"function,omitempty"`
	Permission    string   `json:"permission" yaml:"permission"`
	Condition     string   `json:"condition,omitempty" yaml:"condition,omitempty"`
	Invariants    string   `json:"invariants,omitempty" yaml:"invariants,omitempty"`
	SingletonArgs []string `json:"singleton_args,omitempty" yaml:"singleton_args,omitempty"`
	Hints         []string `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// StoreView is the display projection of a store variable.
type StoreView struct {
	Name  string `json:"name" yaml:"name"`
	Sort  string `json:"sort" yaml:"sort"`
	Value string `json:"value" yaml:"value"`
}

// StateView is the display projection of a symbolic state.
type StateView struct {
	Fingerprint    string      `json:"fingerprint" yaml:"fingerprint"`
	Store          []StoreView `json:"store" yaml:"store"`
	Heap           []ChunkView `json:"heap" yaml:"heap"`
	OldHeap        []ChunkView `json:"old_heap" yaml:"old_heap"`
	PathConditions []string    `json:"pcs" yaml:"pcs"`
}

// RecordView is the display projection of a log record.
type RecordView struct {
	Type         string       `json:"type,omitempty" yaml:"type,omitempty"`
	Kind         string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	Value        string       `json:"value" yaml:"value"`
	Open         bool         `json:"open,omitempty" yaml:"open,omitempty"`
	Prestate     *StateView   `json:"prestate,omitempty" yaml:"prestate,omitempty"`
	LastSMTQuery string       `json:"last_smt_query,omitempty" yaml:"last_smt_query,omitempty"`
	Children     []RecordView `json:"children,omitempty" yaml:"children,omitempty"`
}

// DiffView is the display projection of a state comparison.
type DiffView struct {
	Changed           bool        `json:"changed" yaml:"changed"`
	RemovedVariables  []StoreView `json:"removed_variables,omitempty" yaml:"removed_variables,omitempty"`
	AddedVariables    []StoreView `json:"added_variables,omitempty" yaml:"added_variables,omitempty"`
	RemovedChunks     []ChunkView `json:"removed_chunks,omitempty" yaml:"removed_chunks,omitempty"`
	AddedChunks       []ChunkView `json:"added_chunks,omitempty" yaml:"added_chunks,omitempty"`
	RemovedConditions []string    `json:"removed_pcs,omitempty" yaml:"removed_pcs,omitempty"`
	AddedConditions   []string    `json:"added_pcs,omitempty" yaml:"added_pcs,omitempty"`
}

// Project converts a decoded value into its display projection. Values of
// unknown types are returned unchanged.
func Project(v any) any {
	switch v := v.(type) {
	case model.Sort:
		return v.String()
	case model.Term:
		return projectTerm(v)
	case model.HeapChunk:
		return projectChunk(v)
	case *symbex.State:
		return projectState(v)
	case []*symbex.Record:
		return projectRecords(v)
	case symbex.StateDiff:
		return projectDiff(v)
	default:
		return v
	}
}

func projectTerm(t model.Term) TermView {
	tv := TermView{Kind: string(t.Kind()), Text: t.String()}
	if s, ok := model.SortOf(t); ok {
		tv.Sort = s.String()
	}
	return tv
}

func render(t model.Term) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func renderAll(ts []model.Term) []string {
	if len(ts) == 0 {
		return nil
	}
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func projectChunk(c model.HeapChunk) ChunkView {
	cv := ChunkView{Kind: string(c.Kind()), Resource: c.Resource(), Text: c.String()}
	switch c := c.(type) {
	case model.FieldChunk:
		cv.Sort = c.Sort.String()
		cv.Receiver = render(c.Receiver)
		cv.Snapshot = render(c.Snapshot)
		cv.Permission = render(c.Permission)
	case model.PredicateChunk:
		cv.Args = renderAll(c.Args)
		cv.Snapshot = render(c.Snapshot)
		cv.Permission = render(c.Permission)
	case model.MagicWandChunk:
		cv.Args = renderAll(c.Args)
		cv.Snapshot = render(c.Snapshot)
		cv.Permission = render(c.Permission)
	case model.QuantifiedFieldChunk:
		cv.Sort = c.Sort.String()
		cv.Receiver = render(c.Receiver)
		cv.Function = render(c.FieldValueFunction)
		cv.Permission = render(c.Permission)
		cv.Condition = render(c.Condition)
		cv.Invariants = deref(c.Invariants)
		cv.Hints = renderAll(c.Hints)
	case model.QuantifiedPredicateChunk:
		cv.Sort = c.Sort.String()
		cv.Vars = renderAll(c.Vars)
		cv.Function = render(c.PredicateSnapFunction)
		cv.Permission = render(c.Permission)
		cv.Condition = render(c.Condition)
		cv.Invariants = deref(c.Invariants)
		cv.SingletonArgs = renderAll(c.SingletonArgs)
		cv.Hints = renderAll(c.Hints)
	case model.QuantifiedMagicWandChunk:
		cv.Vars = renderAll(c.Vars)
		cv.Function = render(c.WandSnapFunction)
		cv.Permission = render(c.Permission)
		cv.Condition = render(c.Condition)
		cv.Invariants = deref(c.Invariants)
		cv.SingletonArgs = renderAll(c.SingletonArgs)
		cv.Hints = renderAll(c.Hints)
	}
	return cv
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func projectStore(sv symbex.StoreVariable) StoreView {
	return StoreView{Name: sv.Name, Sort: sv.Sort.String(), Value: render(sv.Value)}
}

func projectChunks(cs []model.HeapChunk) []ChunkView {
	out := make([]ChunkView, len(cs))
	for i, c := range cs {
		out[i] = projectChunk(c)
	}
	return out
}

func projectState(s *symbex.State) *StateView {
	sv := &StateView{
		Fingerprint:    symbex.Fingerprint(s).String(),
		Store:          make([]StoreView, len(s.Store)),
		Heap:           projectChunks(s.Heap),
		OldHeap:        projectChunks(s.OldHeap),
		PathConditions: make([]string, len(s.PathConditions)),
	}
	for i, v := range s.Store {
		sv.Store[i] = projectStore(v)
	}
	for i, pc := range s.PathConditions {
		sv.PathConditions[i] = pc.String()
	}
	return sv
}

func projectRecords(rs []*symbex.Record) []RecordView {
	out := make([]RecordView, len(rs))
	for i, r := range rs {
		rv := RecordView{
			Type:     r.Type,
			Kind:     r.Kind,
			Value:    r.Value,
			Open:     r.Open,
			Children: projectRecords(r.Children),
		}
		if r.Prestate != nil {
			rv.Prestate = projectState(r.Prestate)
		}
		if r.LastSMTQuery != nil {
			rv.LastSMTQuery = r.LastSMTQuery.String()
		}
		if len(rv.Children) == 0 {
			rv.Children = nil
		}
		out[i] = rv
	}
	return out
}

func projectDiff(d symbex.StateDiff) DiffView {
	dv := DiffView{Changed: !d.Empty()}
	for _, vc := range d.ChangedVariables {
		if vc.Before != nil {
			dv.RemovedVariables = append(dv.RemovedVariables, projectStore(*vc.Before))
		}
		if vc.After != nil {
			dv.AddedVariables = append(dv.AddedVariables, projectStore(*vc.After))
		}
	}
	if len(d.RemovedChunks) > 0 {
		dv.RemovedChunks = projectChunks(d.RemovedChunks)
	}
	if len(d.AddedChunks) > 0 {
		dv.AddedChunks = projectChunks(d.AddedChunks)
	}
	dv.RemovedConditions = renderAll(d.RemovedConditions)
	dv.AddedConditions = renderAll(d.AddedConditions)
	return dv
}
