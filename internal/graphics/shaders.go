package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform vec2 tiling;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord * tiling;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS: directional light + ambient + specular scaled by metalness, plus emissive.
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform sampler2D texture0;
uniform float useTexture;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float roughness;
uniform float metalness;
uniform vec3 emissive;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  if (useTexture > 0.5) {
    tint *= texture(texture0, fragTexCoord);
  }
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float power = mix(96.0, 4.0, roughness);
  float spec = pow(max(dot(N, H), 0.0), power) * mix(0.2, 0.8, metalness);
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular + emissive, tint.a);
}
`
	skyboxVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragDir;
void main() {
  fragDir = vertexPosition;
  gl_Position = matProjection * matView * matModel * vec4(vertexPosition, 1.0);
}
`
	skyboxFS = `#version 330
in vec3 fragDir;
uniform samplerCube environmentMap;
out vec4 finalColor;
void main() {
  finalColor = vec4(texture(environmentMap, fragDir).rgb, 1.0);
}
`
)

// ambient is the ambient term (dim so shadowed areas aren't pure black).
var ambient = [4]float32{0.3, 0.32, 0.36, 1.0}

// lightColor is a soft warm-white for the directional light.
var lightColor = [3]float32{1.0, 0.98, 0.95}

const lightIntensity = float32(0.9)

// litShader caches uniform locations of the lit shader.
type litShader struct {
	shader                                 rl.Shader
	viewPos, lightDir, ambient, lightColor int32
	intensity, roughness, metalness        int32
	emissive, tiling, useTexture           int32
}

func loadLitShader() litShader {
	s := rl.LoadShaderFromMemory(litVS, litFS)
	loc := func(name string) int32 { return rl.GetShaderLocation(s, name) }
	return litShader{
		shader:     s,
		viewPos:    loc("viewPos"),
		lightDir:   loc("lightDir"),
		ambient:    loc("ambient"),
		lightColor: loc("lightColor"),
		intensity:  loc("lightIntensity"),
		roughness:  loc("roughness"),
		metalness:  loc("metalness"),
		emissive:   loc("emissive"),
		tiling:     loc("tiling"),
		useTexture: loc("useTexture"),
	}
}

func (l litShader) valid() bool { return rl.IsShaderValid(l.shader) }

// setFrame sets the per-frame uniforms (cgo-safe: local arrays).
func (l litShader) setFrame(viewPos, lightDir [3]float32) {
	amb := ambient
	lc := lightColor
	rl.SetShaderValueV(l.shader, l.viewPos, viewPos[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(l.shader, l.lightDir, lightDir[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(l.shader, l.ambient, amb[:], rl.ShaderUniformVec4, 1)
	rl.SetShaderValueV(l.shader, l.lightColor, lc[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValue(l.shader, l.intensity, []float32{lightIntensity}, rl.ShaderUniformFloat)
}

// setSurface sets the per-draw material uniforms.
func (l litShader) setSurface(roughness, metalness float32, emissive [3]float32, tiling [2]float32, textured bool) {
	use := float32(0)
	if textured {
		use = 1
	}
	rl.SetShaderValue(l.shader, l.roughness, []float32{roughness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(l.shader, l.metalness, []float32{metalness}, rl.ShaderUniformFloat)
	rl.SetShaderValueV(l.shader, l.emissive, emissive[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(l.shader, l.tiling, tiling[:], rl.ShaderUniformVec2, 1)
	rl.SetShaderValue(l.shader, l.useTexture, []float32{use}, rl.ShaderUniformFloat)
}
