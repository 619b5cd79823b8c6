package shader

import _ "embed"

// TerrainVertexShader displaces the grid by the "hf" texture scaled by
// "displaceNormal" and projects it with "viewProj".
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader shades the terrain with "diffuseMap" lit by "sunDir"
// and "ambient".
//
//go:embed terrain.frag
var TerrainFragmentShader string
