package main

import (
	"os"

	knowledgecmder "github.com/vdk888/knowledge/cmd/knowledge"
)

func main() {
	cmd := knowledgecmder.NewKnowledgeCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
