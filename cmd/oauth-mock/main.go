// oauth-mock runs deterministic mock Google and LINE OAuth providers.
package main

import "github.com/getmockd/oauth-mock/pkg/cli"

func main() {
	cli.Execute()
}
