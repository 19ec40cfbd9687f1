// Command soulguide is a terminal chat with a spiritual guide powered by Gemini.
package main

import "github.com/diogo/soulguide/internal/commands"

func main() {
	commands.Execute()
}
