//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import "github.com/google/wire"

func initializeRig(configPath string) (*rig, error) {
	wire.Build(rigSet)
	return nil, nil
}
