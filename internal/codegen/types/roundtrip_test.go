package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/jvppgen/internal/codegen/jni"
	"github.com/okra-platform/jvppgen/internal/schema"
)

// The generated C cannot be run here, so the round trip is checked
// structurally: the struct direction stores every Java value at a native
// path with the host to network conversion, and the dto direction reads the
// same path back with the inverse conversion into the same Java field.
func TestRoundTrip_Structure(t *testing.T) {
	for _, p := range jni.Primitives {
		t.Run(p.WireType, func(t *testing.T) {
			g, _ := newTestGenerator(t)
			def := schema.TypeDefinition{
				Name:    "rt",
				Args:    []string{"n", "v", "fixed", "items"},
				Types:   []string{"u32", p.WireType, p.WireType + "[]", p.WireType + "[]"},
				Lengths: []schema.Length{schema.Scalar(), schema.Scalar(), schema.Fixed(3), schema.VariableLength("n")},
			}
			_, err := g.GenerateType(def)
			require.NoError(t, err)

			store := request(t, g.Registry(), "vl_api_rt_t", "rt")
			load := reply(t, g.Registry(), "vl_api_rt_t", "rt", "")

			for _, field := range []string{"n", "v", "fixed", "items"} {
				lookup := fmt.Sprintf(`GetFieldID(env, rtClass, "%s"`, field)
				assert.Contains(t, store, lookup)
				assert.Contains(t, load, lookup)
			}

			h2n := func(v string) string { return v }
			n2h := func(v string) string { return v }
			if p.Swap {
				h2n = func(v string) string { return fmt.Sprintf("clib_host_to_net_%s(%s)", p.WireType, v) }
				n2h = func(v string) string { return fmt.Sprintf("clib_net_to_host_%s(%s)", p.WireType, v) }
			}

			// scalar
			assert.Contains(t, store, fmt.Sprintf("mp->rt.v = %s;", h2n("rtV")))
			assert.Contains(t, load, fmt.Sprintf("(*env)->Set%sField(env, rt, rtVFieldId, %s);", p.Kind, n2h("mp->rt.v")))

			// arrays
			for _, field := range []struct{ name, ref, length string }{
				{"fixed", "rtFixed", "3"},
				{"items", "rtItems", "clib_net_to_host_u32(mp->rt.n)"},
			} {
				if p.Swap {
					assert.Contains(t, store, fmt.Sprintf("mp->rt.%s[_i] = %s;", field.name, h2n(field.ref+"ArrayElements[_i]")))
					assert.Contains(t, load, fmt.Sprintf("%sArrayElements[_i] = %s;", field.ref, n2h(fmt.Sprintf("mp->rt.%s[_i]", field.name))))
					assert.Contains(t, load, fmt.Sprintf("(*env)->New%sArray(env, %s);", p.Kind, field.length))
				} else {
					assert.Contains(t, store, fmt.Sprintf("(*env)->GetByteArrayRegion(env, %s, 0, cnt, (jbyte *)mp->rt.%s);", field.ref, field.name))
					assert.Contains(t, load, fmt.Sprintf("(*env)->SetByteArrayRegion(env, %s, 0, %s, (const jbyte *)mp->rt.%s);", field.ref, field.length, field.name))
				}
				assert.Contains(t, load, fmt.Sprintf("(*env)->SetObjectField(env, rt, %sFieldId, %s);", field.ref, field.ref))
			}

			assert.Contains(t, store, "if (cnt != 3) {")
			assert.Contains(t, store, "if (cnt != rtN) {")
		})
	}
}

func TestRoundTrip_UnsignedCounts(t *testing.T) {
	// Test: A count field above the signed Java range sizes the array in
	// both directions through its unsigned value
	for _, count := range []string{"u8", "u16"} {
		t.Run(count, func(t *testing.T) {
			g, _ := newTestGenerator(t)
			def := schema.TypeDefinition{
				Name:    "blob",
				Args:    []string{"count", "data"},
				Types:   []string{count, "u8[]"},
				Lengths: []schema.Length{schema.Scalar(), schema.VariableLength("count")},
			}
			_, err := g.GenerateType(def)
			require.NoError(t, err)

			store := request(t, g.Registry(), "vl_api_blob_t", "blob")
			load := reply(t, g.Registry(), "vl_api_blob_t", "blob", "")

			assert.Contains(t, store, fmt.Sprintf("if (cnt != (jsize)(%s)blobCount) {", count))
			assert.NotContains(t, store, "if (cnt != blobCount) {")

			length := jni.NetToHost(count, "mp->blob.count")
			assert.Contains(t, load, fmt.Sprintf("(*env)->NewByteArray(env, %s);", length))
		})
	}
}
