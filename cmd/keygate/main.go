// Package main provides the keygate CLI for credential-safe request
// dispatch.
package main

func main() {
	Execute()
}
