// Package trajectory loads and interrogates particle trajectories produced
// by an external molecular dynamics engine.
//
// A trajectory is an ordered sequence of timesteps stored as CSV, one row
// per timestep:
//
//	time,x0,y0[,z0],x1,...,vx0,vy0[,vz0],vx1,...
//
// Times, positions and velocities are co-indexed and the particle count is
// constant across the whole file. All quantities are dimensionless
// (Lennard-Jones reduced units).
//
// The package also provides the pairwise minimum-image computation and the
// kinetic/potential/total energy functions used by the chart and preview
// layers.
package trajectory
