// Package viz plays a sampled trajectory in the terminal.
//
// The playback view mirrors the PNG frame renderer: particles in the
// central box drawn bold, periodic replicas as single dots, and 3D data
// projected through the same azimuth/elevation camera. A side panel shows
// the current frame, per-frame energies, and an energy history sparkline.
//
// Controls:
//   - space: pause/resume
//   - r: restart
//   - left/right: step one frame
//   - +/-: playback speed
//   - q: quit
package viz
