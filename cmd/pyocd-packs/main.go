// Command pyocd-packs adds the CMSIS packs installed in the active pixi
// environment to the project's pyocd.yaml.
package main

import "github.com/oshokin/pixi-ci/cmd/pyocd-packs/cmd"

func main() {
	cmd.Execute()
}
