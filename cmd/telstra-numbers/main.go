// telstra-numbers is a CLI for the Telstra messaging v3 number endpoints.
//
// Every run performs an OAuth2 client-credentials grant, makes one API call,
// prints each HTTP status and raw response body, and exits 0 on success or 1
// on any failure.
//
// Usage:
//
//	telstra-numbers free-trial list                  List free-trial numbers
//	telstra-numbers free-trial register <n> [<n>...] Register free-trial numbers
//	telstra-numbers virtual-numbers                  List virtual numbers
//	telstra-numbers token                            Check credentials
//	telstra-numbers version                          Show version info
//
// Credentials come from TELSTRA_CLIENT_ID and TELSTRA_CLIENT_SECRET or a
// telstra-numbers.yaml config file.
package main

import "github.com/msgtools/telstra-numbers/internal/commands"

func main() {
	commands.Execute()
}
