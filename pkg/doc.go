// Package pkg provides the core libraries for Lumen offline path tracing.
//
// # Overview
//
// Lumen renders declarative YAML scene descriptions into PNG images by
// Monte-Carlo light transport. The pkg directory is organized into four
// main areas:
//
//  1. [scene], [asset] - Scene persistence and texture loading
//  2. [geom], [material], [engine] - The render engine (BVH, integrator, executor)
//  3. [cache], [history], [observability] - Infrastructure
//  4. [pipeline] - Orchestration (load → validate → compile → sample → encode)
//
// # Architecture
//
// The typical data flow through Lumen:
//
//	Scene YAML + textures
//	         ↓
//	    [scene] package (load + validate)
//	         ↓
//	    [engine] package (compile: camera, materials, BVH)
//	         ↓
//	    [engine] package (parallel sampling over [geom] + [material])
//	         ↓
//	    PNG output (+ artifact [cache], run [history])
package pkg
