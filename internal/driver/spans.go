package driver

import (
	"fortio.org/safecast"

	"marker/api"
	"marker/internal/source"
)

// spanSourceInfo identifies the host file behind one SpanSrcID and the
// offset API positions are relative to. The host keeps file-absolute
// byte offsets, so the offset is currently always zero; the indirection
// keeps the API contract independent of that.
type spanSourceInfo struct {
	file        source.FileID
	startOffset uint32
}

// spanTable converts between host spans and the API's span tokens, in
// both directions: nodes hand out SpanIDs, diagnostics come back as
// api.Span values that must land on host spans again.
type spanTable struct {
	fset  *source.FileSet
	expns *source.ExpnTable

	spans []source.Span
	index map[source.Span]api.SpanID

	srcIDs  map[source.FileID]api.SpanSrcID
	srcInfo map[api.SpanSrcID]spanSourceInfo
}

func newSpanTable(fset *source.FileSet, expns *source.ExpnTable) *spanTable {
	return &spanTable{
		fset:    fset,
		expns:   expns,
		index:   make(map[source.Span]api.SpanID),
		srcIDs:  make(map[source.FileID]api.SpanSrcID),
		srcInfo: make(map[api.SpanSrcID]spanSourceInfo),
	}
}

func (t *spanTable) srcID(file source.FileID) api.SpanSrcID {
	if id, ok := t.srcIDs[file]; ok {
		return id
	}
	id := api.SpanSrcID(safecast.MustConvert[uint32](len(t.srcIDs) + 1))
	t.srcIDs[file] = id
	t.srcInfo[id] = spanSourceInfo{file: file}
	return id
}

// intern hands out the SpanID token for a host span, deduplicated.
func (t *spanTable) intern(sp source.Span) api.SpanID {
	if id, ok := t.index[sp]; ok {
		return id
	}
	t.spans = append(t.spans, sp)
	id := api.SpanID(len(t.spans))
	t.index[sp] = id
	return id
}

// resolve materializes a SpanID into an API span. Spans from macro
// expansions are reported at their outermost call site, flagged as
// coming from an expansion.
func (t *spanTable) resolve(id api.SpanID) *api.Span {
	if id == 0 || int(id) > len(t.spans) {
		return nil
	}
	sp := t.spans[id-1]
	expn := sp.Ctx
	for sp.Ctx != source.NoExpn {
		data := t.expns.Get(sp.Ctx)
		if data == nil {
			break
		}
		sp = data.CallSite
	}
	out := api.NewSpan(t.srcID(sp.File), api.ExpnID(expn), api.SpanPos(sp.Start), api.SpanPos(sp.End))
	return &out
}

// toHost maps an API span back to a host span for diagnostic rendering.
func (t *spanTable) toHost(sp *api.Span) (source.Span, bool) {
	info, ok := t.srcInfo[sp.SrcID()]
	if !ok {
		return source.Span{}, false
	}
	return source.Span{
		File:  info.file,
		Start: uint32(sp.Start()) + info.startOffset,
		End:   uint32(sp.End()) + info.startOffset,
	}, true
}

func (t *spanTable) snippet(sp *api.Span) (string, bool) {
	host, ok := t.toHost(sp)
	if !ok {
		return "", false
	}
	return t.fset.Snippet(host)
}

func (t *spanTable) spanSource(sp *api.Span) api.SpanSource {
	if sp.IsFromExpansion() {
		if info := t.expnInfo(sp.ExpnID()); info != nil {
			return api.SpanSource{Expn: info}
		}
	}
	info, ok := t.srcInfo[sp.SrcID()]
	if !ok {
		return api.SpanSource{}
	}
	file := t.fset.Get(info.file)
	if file == nil {
		return api.SpanSource{}
	}
	return api.SpanSource{File: api.NewFileInfo(file.Path, sp.SrcID())}
}

func (t *spanTable) expnInfo(id api.ExpnID) *api.ExpnInfo {
	data := t.expns.Get(source.ExpnID(id))
	if data == nil {
		return nil
	}
	return api.NewExpnInfo(api.ExpnID(data.Parent), t.intern(data.CallSite), api.MacroID(data.Macro))
}

func (t *spanTable) fileLoc(file *api.FileInfo, pos api.SpanPos) (api.FilePos, bool) {
	info, ok := t.srcInfo[file.SpanSrc()]
	if !ok {
		return api.FilePos{}, false
	}
	off := uint32(pos) + info.startOffset
	start, _ := t.fset.Resolve(source.Span{File: info.file, Start: off, End: off})
	return api.FilePos{Line: int(start.Line), Column: int(start.Col)}, true
}
