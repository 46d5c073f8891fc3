/*
Copyright © 2024 igbuch
*/
package main

import "github.com/igbuch/fbRads/cmd/fbrads/cmd"

func main() {
	cmd.Execute()
}
