package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/heightfield/internal/engine/heightfield"
	"github.com/Faultbox/heightfield/internal/engine/lighting"
)

func TestSourcesDefault(t *testing.T) {
	vs, fs, err := Sources("", "")
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}
	if vs != TerrainVertexShader || fs != TerrainFragmentShader {
		t.Error("expected embedded sources")
	}
	for _, src := range []string{vs, fs} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("expected GLSL 410 core header, got %q", src[:min(len(src), 20)])
		}
	}
}

func TestEmbeddedMatchesUniforms(t *testing.T) {
	u := heightfield.DefaultUniforms()

	for _, name := range []string{u.HeightField, u.Displace, u.ViewProjection, u.Footprint} {
		if !strings.Contains(TerrainVertexShader, "uniform ") || !strings.Contains(TerrainVertexShader, " "+name+";") {
			t.Errorf("vertex shader does not declare uniform %q", name)
		}
	}
	if !strings.Contains(TerrainFragmentShader, " "+u.Diffuse+";") {
		t.Errorf("fragment shader does not declare uniform %q", u.Diffuse)
	}

	sun := lighting.DefaultUniforms()
	for _, name := range []string{sun.Direction, sun.Ambient} {
		if !strings.Contains(TerrainFragmentShader, " "+name+";") {
			t.Errorf("fragment shader does not declare uniform %q", name)
		}
	}

	if !strings.Contains(TerrainVertexShader, "layout (location = 0) in vec3") {
		t.Error("expected position at attribute 0")
	}
	if !strings.Contains(TerrainVertexShader, "layout (location = 1) in vec2") {
		t.Error("expected texcoord at attribute 1")
	}
}

func TestSourcesFromFiles(t *testing.T) {
	dir := t.TempDir()
	vertPath := filepath.Join(dir, "custom.vert")
	if err := os.WriteFile(vertPath, []byte("#version 410 core\nvoid main() {}\n"), 0644); err != nil {
		t.Fatalf("failed to write shader: %v", err)
	}

	vs, fs, err := Sources(vertPath, "")
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}
	if !strings.Contains(vs, "void main() {}") {
		t.Errorf("expected custom vertex source, got %q", vs)
	}
	if fs != TerrainFragmentShader {
		t.Error("expected embedded fragment source")
	}
}

func TestSourcesMissing(t *testing.T) {
	_, _, err := Sources("", filepath.Join(t.TempDir(), "nope.frag"))
	if err == nil {
		t.Fatal("expected error for missing fragment shader")
	}
	if !strings.Contains(err.Error(), "fragment shader") {
		t.Errorf("expected stage in error, got %v", err)
	}
}
