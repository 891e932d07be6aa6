package adapter

import (
	"errors"
	"fmt"
	"testing"

	"marker/api"
)

type fakeTable map[string]any

func (t fakeTable) Lookup(name string) (any, error) {
	sym, ok := t[name]
	if !ok {
		return nil, fmt.Errorf("symbol %q not found", name)
	}
	return sym, nil
}

type fakeLoader map[string]fakeTable

func (l fakeLoader) Open(path string) (SymbolTable, error) {
	table, ok := l[path]
	if !ok {
		return nil, fmt.Errorf("no such library %q", path)
	}
	return table, nil
}

func crateTable(version string, bindings api.LintCrateBindings) fakeTable {
	return fakeTable{
		apiVersionSymbol: func() string { return version },
		bindingsSymbol:   func() api.LintCrateBindings { return bindings },
	}
}

type recordingPass struct {
	api.DefaultLintPass
	name   string
	events *[]string
	panics bool
}

func (p *recordingPass) Info() api.LintPassInfo { return api.LintPassInfo{} }

func (p *recordingPass) CheckItem(ctx *api.MarkerContext, item api.ItemKind) {
	*p.events = append(*p.events, p.name+":item")
	if p.panics {
		panic("lint crate bug")
	}
}

func (p *recordingPass) CheckExpr(ctx *api.MarkerContext, expr api.ExprKind) {
	*p.events = append(*p.events, p.name+":expr")
}

func TestParseEnv(t *testing.T) {
	tests := []struct {
		value   string
		want    []LintCrateInfo
		wantErr bool
	}{
		{value: "", want: nil},
		{value: "a:/lib/a.so", want: []LintCrateInfo{{Name: "a", Path: "/lib/a.so"}}},
		{
			value: "a:/lib/a.so;b:/lib/b.so",
			want: []LintCrateInfo{
				{Name: "a", Path: "/lib/a.so"},
				{Name: "b", Path: "/lib/b.so"},
			},
		},
		{value: "no-path", wantErr: true},
		{value: "a:/lib/a.so;;b:/lib/b.so", wantErr: true},
		{value: ":/lib/a.so", wantErr: true},
		{value: "a:", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseEnv(tt.value)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedEnvValue) {
				t.Errorf("ParseEnv(%q) err = %v, want ErrMalformedEnvValue", tt.value, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEnv(%q) err = %v", tt.value, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseEnv(%q) = %v, want %v", tt.value, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseEnv(%q)[%d] = %v, want %v", tt.value, i, got[i], tt.want[i])
			}
		}
	}
}

func TestEnvRoundTrip(t *testing.T) {
	crates := []LintCrateInfo{{Name: "a", Path: "/a.so"}, {Name: "b", Path: "/b.so"}}
	got, err := ParseEnv(FormatEnv(crates))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != crates[0] || got[1] != crates[1] {
		t.Fatalf("round trip = %v", got)
	}
}

func TestVersionGate(t *testing.T) {
	var events []string
	loader := fakeLoader{
		"/old.so": crateTable("0.1.0", api.NewLintCrateBindings(&recordingPass{name: "old", events: &events})),
	}
	_, err := New(loader, []LintCrateInfo{{Name: "old", Path: "/old.so"}})
	var verErr *IncompatibleAPIVersionError
	if !errors.As(err, &verErr) {
		t.Fatalf("err = %v, want IncompatibleAPIVersionError", err)
	}
	if verErr.Found != "0.1.0" || verErr.Expected != api.APIVersion {
		t.Fatalf("version error = %+v", verErr)
	}
}

func TestMissingSymbols(t *testing.T) {
	loader := fakeLoader{
		"/not-a-crate.so": fakeTable{},
		"/no-bindings.so": fakeTable{
			apiVersionSymbol: func() string { return api.APIVersion },
		},
		"/wrong-type.so": fakeTable{
			apiVersionSymbol: "not a function",
		},
	}

	_, err := New(loader, []LintCrateInfo{{Name: "x", Path: "/not-a-crate.so"}})
	if !errors.Is(err, ErrMissingAPIVersionSymbol) {
		t.Fatalf("err = %v, want ErrMissingAPIVersionSymbol", err)
	}

	_, err = New(loader, []LintCrateInfo{{Name: "x", Path: "/no-bindings.so"}})
	if !errors.Is(err, ErrMissingBindingsSymbol) {
		t.Fatalf("err = %v, want ErrMissingBindingsSymbol", err)
	}

	_, err = New(loader, []LintCrateInfo{{Name: "x", Path: "/wrong-type.so"}})
	if !errors.Is(err, ErrMissingAPIVersionSymbol) {
		t.Fatalf("err = %v, want ErrMissingAPIVersionSymbol for a mistyped symbol", err)
	}

	_, err = New(loader, []LintCrateInfo{{Name: "x", Path: "/missing.so"}})
	if !errors.Is(err, ErrLibraryOpen) {
		t.Fatalf("err = %v, want ErrLibraryOpen", err)
	}
}

func testContext() *api.MarkerContext {
	astMap := api.NewAstMap(nil, api.AstMapCallbacks{
		LintLevelAt: func(any, *api.Lint, api.EmissionNode) api.Level { return api.LevelWarn },
	})
	return api.NewMarkerContext(nil, api.Callbacks{}, astMap)
}

func TestFanOutOrderAndPanicIsolation(t *testing.T) {
	var events []string
	loader := fakeLoader{
		"/a.so": crateTable(api.APIVersion, api.NewLintCrateBindings(&recordingPass{name: "a", events: &events, panics: true})),
		"/b.so": crateTable(api.APIVersion, api.NewLintCrateBindings(&recordingPass{name: "b", events: &events})),
	}
	a, err := New(loader, []LintCrateInfo{
		{Name: "a", Path: "/a.so"},
		{Name: "b", Path: "/b.so"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var ices []string
	a.onICE = func(crate string, recovered any) {
		ices = append(ices, crate)
	}

	item := api.NewConstItem(api.ItemData{ID: 1}, nil, 0)
	a.ProcessCrate(testContext(), []api.ItemKind{item})

	want := []string{"a:item", "b:item"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
	if len(ices) != 1 || ices[0] != "a" {
		t.Fatalf("ICE reports = %v, want one for crate a", ices)
	}
}

func TestProcessCrateEntersBodies(t *testing.T) {
	var events []string
	loader := fakeLoader{
		"/a.so": crateTable(api.APIVersion, api.NewLintCrateBindings(&recordingPass{name: "a", events: &events})),
	}
	a, err := New(loader, []LintCrateInfo{{Name: "a", Path: "/a.so"}})
	if err != nil {
		t.Fatal(err)
	}

	body := api.NewBody(1, 1, api.NewIntLitExpr(api.ExprData{ID: 1}, 7, ""))
	bodies := map[api.BodyID]*api.Body{1: body}
	astMap := api.NewAstMap(bodies, api.AstMapCallbacks{
		Body: func(data any, id api.BodyID) (*api.Body, bool) {
			b, ok := data.(map[api.BodyID]*api.Body)[id]
			return b, ok
		},
		LintLevelAt: func(any, *api.Lint, api.EmissionNode) api.Level { return api.LevelWarn },
	})
	ctx := api.NewMarkerContext(nil, api.Callbacks{}, astMap)

	fn := api.NewFnItem(api.ItemData{ID: 1}, api.GenericParams{}, nil, nil, 1, api.FnItemOpts{})
	a.ProcessCrate(ctx, []api.ItemKind{fn})

	want := []string{"a:item", "a:expr"}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("events = %v, want %v", events, want)
	}
}
