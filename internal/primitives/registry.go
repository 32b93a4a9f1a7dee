package primitives

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Registry owns the meshes and the lit material every primitive is drawn with. Meshes are
// created on first use so that GPU resources are allocated after the window/OpenGL context
// exists.
type Registry struct {
	meshes map[Shape]rl.Mesh
	mtl    rl.Material
	ready  bool
	lit    bool
}

// NewRegistry returns a registry with no GPU resources yet.
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[Shape]rl.Mesh)}
}

func (r *Registry) ensureMaterial() {
	if r.ready {
		return
	}
	r.mtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
		r.lit = true
		r.setLightUniforms()
	}
	r.ready = true
}

func (r *Registry) mesh(s Shape) (rl.Mesh, bool) {
	if m, ok := r.meshes[s]; ok {
		return m, true
	}
	var m rl.Mesh
	switch s {
	case ShapeCube:
		m = rl.GenMeshCube(1, 1, 1)
	case ShapePlane:
		m = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return m, false
	}
	r.meshes[s] = m
	return m, true
}

// SetView sets the camera position and direction-to-light for this frame. Call once per
// frame before drawing.
func (r *Registry) SetView(viewPos, lightDir mgl32.Vec3) {
	r.ensureMaterial()
	if !r.lit {
		return
	}
	sh := r.mtl.Shader
	pos := [3]float32{viewPos[0], viewPos[1], viewPos[2]}
	dir := [3]float32{lightDir[0], lightDir[1], lightDir[2]}
	if loc := rl.GetShaderLocation(sh, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, pos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(sh, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, dir[:], rl.ShaderUniformVec3, 1)
	}
}

// setLightUniforms uploads the constant light terms once, when the shader is created.
func (r *Registry) setLightUniforms() {
	sh := r.mtl.Shader
	amb := defaultAmbient
	lightColor := defaultLightColor
	if loc := rl.GetShaderLocation(sh, "ambient"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(sh, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(sh, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(sh, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(sh, "specularPower"); loc >= 0 {
		rl.SetShaderValue(sh, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(sh, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(sh, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}

// Draw draws d centered at pos, rotated yaw degrees about the up axis.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) Draw(d Def, pos mgl32.Vec3, yaw float32) {
	r.ensureMaterial()
	m, ok := r.mesh(d.Shape)
	if !ok {
		return
	}
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = d.Color
	}
	rl.DrawMesh(m, r.mtl, transform(d.Size, pos, yaw))
}

// transform scales, then rotates about Y, then translates.
func transform(size, pos mgl32.Vec3, yaw float32) rl.Matrix {
	sx, sy, sz := size[0], size[1], size[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	m := rl.MatrixScale(sx, sy, sz)
	if yaw != 0 {
		m = rl.MatrixMultiply(m, rl.MatrixRotateY(yaw*math32.Pi/180))
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(pos[0], pos[1], pos[2]))
}

// Unload frees the meshes and the shader. The registry can be reused afterwards.
func (r *Registry) Unload() {
	for s, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, s)
	}
	if r.lit {
		rl.UnloadShader(r.mtl.Shader)
	}
	r.ready, r.lit = false, false
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * step(0.0001, NdotL);
  finalColor = vec4(amb + diffuse + specular, colDiffuse.a);
}
`
)

// defaultAmbient is the ambient term (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.25, 0.26, 0.3, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

const (
	defaultLightIntensity   = float32(0.75)
	defaultSpecularPower    = float32(32.0)
	defaultSpecularStrength = float32(0.2)
)
