// Package planner turns a validated render configuration into a Plan that
// the ffmpeg package consumes.
//
// Implemented:
//   - FadeWindow: clip duration and the fade-in/fade-out filter fragment (filter.go)
//   - Plan, Pipeline and the per-format codec table (types.go)
//   - BuildPlan: selects the pipeline and encoder settings for a format (planner.go)
package planner
