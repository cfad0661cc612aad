// Command upload-package uploads a built conda package to a prefix.dev
// channel unless the channel already has it.
package main

import "github.com/oshokin/pixi-ci/cmd/upload-package/cmd"

func main() {
	cmd.Execute()
}
