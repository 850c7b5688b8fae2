package sddl_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/sddl"
	"github.com/kralicky/sddl/sddlvalue"
	"github.com/kralicky/sddl/target"
)

// memReader is a FileReader backed by an in-memory map, used so tests
// never touch the filesystem.
type memReader map[string]string

func (m memReader) ReadFile(path string) (string, error) {
	src, ok := m[path]
	if !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return src, nil
}

func TestSimpleConstant(t *testing.T) {
	files := memReader{
		"a.sddl": `integer Answer = 42;`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	desc, ok := res.Constants.Get("Answer")
	require.True(t, ok)
	i, _ := desc.Value.TryInt()
	require.Equal(t, int32(42), i)
}

func TestForwardReferenceWithinFile(t *testing.T) {
	files := memReader{
		"a.sddl": `
			auto A = B + 1;
			integer B = 5;
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	a, ok := res.Constants.Get("A")
	require.True(t, ok)
	i, _ := a.Value.TryInt()
	require.Equal(t, int32(6), i)
}

func TestCrossFileForwardReference(t *testing.T) {
	files := memReader{
		"a.sddl": `
			require { "b.sddl" }
			auto A = B + 1;
		`,
		"b.sddl": `integer B = 5;`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	a, ok := res.Constants.Get("A")
	require.True(t, ok)
	i, _ := a.Value.TryInt()
	require.Equal(t, int32(6), i)
}

func TestCircularConstantsFail(t *testing.T) {
	files := memReader{
		"a.sddl": `
			auto A = B;
			auto B = A;
		`,
	}
	c := &sddl.Compiler{Reader: files}
	_, err := c.Compile("a.sddl")
	require.Error(t, err)
}

func TestLocalConstantNotEmitted(t *testing.T) {
	files := memReader{
		"a.sddl": `
			local integer Secret = 7;
			auto Visible = Secret + 1;
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	_, ok := res.Constants.Get("Secret")
	require.False(t, ok, "local constants must not be promoted to the public table")
	v, ok := res.Constants.Get("Visible")
	require.True(t, ok)
	i, _ := v.Value.TryInt()
	require.Equal(t, int32(8), i)
}

func TestMessageWithForwardType(t *testing.T) {
	files := memReader{
		"a.sddl": `
			Node {
				Edge next @1 = option;
			}
			Edge {
				integer weight @1;
			}
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	node, ok := res.Messages.Get("Node")
	require.True(t, ok)
	require.Len(t, node.Entries, 1)
	require.Equal(t, "Edge", node.Entries[0].TypeName)
}

func TestCircularRequiredMessagesFail(t *testing.T) {
	files := memReader{
		"a.sddl": `
			A {
				B b @1;
			}
			B {
				A a @1;
			}
		`,
	}
	c := &sddl.Compiler{Reader: files}
	_, err := c.Compile("a.sddl")
	require.Error(t, err)
}

func TestOptionalSelfReferenceDoesNotCycle(t *testing.T) {
	files := memReader{
		"a.sddl": `
			Tree {
				integer value @1;
				Tree child @2 = option;
			}
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	_, ok := res.Messages.Get("Tree")
	require.True(t, ok)
}

func TestMessageDefaultFromConstant(t *testing.T) {
	files := memReader{
		"a.sddl": `
			integer Default = 9;
			M {
				integer x @1 = Default;
			}
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	m, ok := res.Messages.Get("M")
	require.True(t, ok)
	require.True(t, m.Entries[0].HasDefault)
	i, _ := m.Entries[0].Default.TryInt()
	require.Equal(t, int32(9), i)
}

func TestPlaceConflictFails(t *testing.T) {
	files := memReader{
		"a.sddl": `
			M {
				integer x @1;
				integer y @1;
			}
		`,
	}
	c := &sddl.Compiler{Reader: files}
	_, err := c.Compile("a.sddl")
	require.Error(t, err)
}

func TestTypedefWithDelete(t *testing.T) {
	files := memReader{
		"a.sddl": `
			Color [
				Red @1 = integer;
				Green @2 = delete;
				Blue @3 = integer;
			]
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	td, ok := res.Typedefs.Get("Color")
	require.True(t, ok)
	require.Len(t, td.Aliases, 2)
	names := []string{td.Aliases[0].Name, td.Aliases[1].Name}
	require.ElementsMatch(t, []string{"Red", "Blue"}, names)
}

func TestRPCWithArrow(t *testing.T) {
	files := memReader{
		"a.sddl": `
			Req { integer x @1; }
			Resp { integer y @1; }
			Svc (
				Call1 @1 = Req -> Resp;
			)
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	r, ok := res.RPCs.Get("Svc")
	require.True(t, ok)
	require.Len(t, r.Calls, 1)
	require.Equal(t, "Req", r.Calls[0].Request.Name)
	require.Equal(t, "Resp", r.Calls[0].Response.Name)
}

// recordingTarget is a minimal target.Target that records exactly what it
// was called with, enough to assert on emission order and shape without
// implementing a real back-end. It keeps the full Entry/Alias/Call shapes
// (not just names) so the emission-driver test can diff the whole call
// trace with go-cmp instead of re-checking each field by hand.
type recordingTarget struct {
	prepared bool
	flushed  bool
	values   []string
	messages []string
	typedefs []string
	rpcs     []string

	messageEntries [][]target.Entry
	typedefAliases [][]target.Alias
	rpcCalls       [][]target.Call
}

func (r *recordingTarget) Encoding() string { return "utf-8" }
func (r *recordingTarget) Newline() string  { return "\n" }

func (r *recordingTarget) Prepare(target.Sink) error { r.prepared = true; return nil }
func (r *recordingTarget) Flush(target.Sink) error   { r.flushed = true; return nil }

func (r *recordingTarget) ValueBool(_ target.Sink, name string, v bool) error {
	r.values = append(r.values, name)
	return nil
}
func (r *recordingTarget) ValueInt(_ target.Sink, name string, v int32) error {
	r.values = append(r.values, name)
	return nil
}
func (r *recordingTarget) ValueFloat(_ target.Sink, name string, v float64) error {
	r.values = append(r.values, name)
	return nil
}
func (r *recordingTarget) ValueString(_ target.Sink, name string, v string) error {
	r.values = append(r.values, name)
	return nil
}

func (r *recordingTarget) Message(_ target.Sink, name string, entries []target.Entry) error {
	r.messages = append(r.messages, name)
	r.messageEntries = append(r.messageEntries, entries)
	return nil
}
func (r *recordingTarget) Typedef(_ target.Sink, name string, aliases []target.Alias) error {
	r.typedefs = append(r.typedefs, name)
	r.typedefAliases = append(r.typedefAliases, aliases)
	return nil
}
func (r *recordingTarget) RPC(_ target.Sink, name string, calls []target.Call) error {
	r.rpcs = append(r.rpcs, name)
	r.rpcCalls = append(r.rpcCalls, calls)
	return nil
}

func TestEmissionOrderAndCoverage(t *testing.T) {
	files := memReader{
		"a.sddl": `
			integer Z = 1;
			integer A = 2;
			M { integer x @1; }
			T [ X @1 = integer; ]
			R ( C @1 = M -> M; )
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)

	rt := &recordingTarget{}
	require.NoError(t, c.Emit(rt, nil, res))
	require.True(t, rt.prepared)
	require.True(t, rt.flushed)
	require.Equal(t, []string{"A", "Z"}, rt.values) // lexicographic, not declaration order
	require.Equal(t, []string{"M"}, rt.messages)
	require.Equal(t, []string{"T"}, rt.typedefs)
	require.Equal(t, []string{"R"}, rt.rpcs)

	// Diff the full call-trace shapes (not just the names above), the way
	// the teacher's own linker tests diff whole symbol tables rather than
	// individual fields.
	cmpOpts := cmp.AllowUnexported(sddlvalue.Value{})

	wantEntries := []target.Entry{
		{FieldName: "x", Place: 1, Kind: "integer", Option: "require", Default: sddlvalue.NewInt(0)},
	}
	if diff := cmp.Diff(wantEntries, rt.messageEntries[0], cmpOpts); diff != "" {
		t.Errorf("message M entries mismatch (-want +got):\n%s", diff)
	}

	wantAliases := []target.Alias{
		{Name: "X", Place: 1, Kind: "integer"},
	}
	if diff := cmp.Diff(wantAliases, rt.typedefAliases[0], cmpOpts); diff != "" {
		t.Errorf("typedef T aliases mismatch (-want +got):\n%s", diff)
	}

	wantCalls := []target.Call{
		{
			Name:     "C",
			Place:    1,
			Request:  &target.Alias{TypeName: "M"},
			Response: &target.Alias{TypeName: "M"},
		},
	}
	if diff := cmp.Diff(wantCalls, rt.rpcCalls[0], cmpOpts); diff != "" {
		t.Errorf("rpc R calls mismatch (-want +got):\n%s", diff)
	}
}

func TestUnresolvedMessageTypeFails(t *testing.T) {
	files := memReader{
		"a.sddl": `
			M {
				Ghost g @1;
			}
		`,
	}
	c := &sddl.Compiler{Reader: files}
	_, err := c.Compile("a.sddl")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Ghost")
}

func TestUnresolvedConstantFails(t *testing.T) {
	files := memReader{
		"a.sddl": `auto A = Ghost + 1;`,
	}
	c := &sddl.Compiler{Reader: files}
	_, err := c.Compile("a.sddl")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Ghost")
}

func TestTypedefDeleteDoesNotBlockNameReuse(t *testing.T) {
	files := memReader{
		"a.sddl": `
			T [
				A @1 = delete;
				A @2 = integer;
			]
		`,
	}
	c := &sddl.Compiler{Reader: files}
	res, err := c.Compile("a.sddl")
	require.NoError(t, err)
	td, ok := res.Typedefs.Get("T")
	require.True(t, ok)
	require.Len(t, td.Aliases, 1)
	require.Equal(t, "A", td.Aliases[0].Name)
	require.Equal(t, 2, td.Aliases[0].Place)
}

func TestTypedefPlaceConflictStillRejectedAcrossDelete(t *testing.T) {
	files := memReader{
		"a.sddl": `
			T [
				A @1 = delete;
				B @1 = integer;
			]
		`,
	}
	c := &sddl.Compiler{Reader: files}
	_, err := c.Compile("a.sddl")
	require.Error(t, err)
}
