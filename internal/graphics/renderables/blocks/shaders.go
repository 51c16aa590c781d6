package blocks

import "path/filepath"

// Override file names looked up in the configured shader directory.
const (
	VertShaderFile = "blocks.vert"
	FragShaderFile = "blocks.frag"
)

func shaderPaths(dir string) (string, string) {
	return filepath.Join(dir, VertShaderFile), filepath.Join(dir, FragShaderFile)
}

const vertexSource = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec4 aCol;

uniform mat4 proj;
uniform mat4 view;

out vec2 vUV;
out vec4 vCol;
out float vDist;

void main() {
	vec4 eye = view * vec4(aPos, 1.0);
	gl_Position = proj * eye;
	vUV = aUV;
	vCol = aCol;
	vDist = length(eye.xyz);
}
`

const fragmentSource = `#version 410 core
in vec2 vUV;
in vec4 vCol;
in float vDist;

uniform sampler2D atlas;
uniform bool alphaTest;
uniform vec3 fogColor;
uniform float fogStart;
uniform float fogEnd;

out vec4 FragColor;

void main() {
	vec4 c = texture(atlas, vUV) * vCol;
	if (alphaTest && c.a < 0.5) {
		discard;
	}
	float fog = clamp((vDist - fogStart) / (fogEnd - fogStart), 0.0, 1.0);
	FragColor = vec4(mix(c.rgb, fogColor, fog), c.a);
}
`
