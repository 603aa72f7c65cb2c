// Package render draws single-timestep particle configurations onto
// in-memory raster canvases.
//
// Each particle is drawn together with its periodic images, the translated
// copies under the replica offset set {-L, 0, +L}^dim, so that behavior at
// the box boundary stays visible. 3D configurations are projected onto the
// canvas with a fixed azimuth/elevation orthographic camera.
//
// A [Canvas] is created per frame and returned from [Renderer.Frame]; no
// drawing state is shared between frames.
package render
