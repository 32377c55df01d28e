// protodump downloads PrismarineJS/minecraft-data for one protocol version
// and prints its packet-id mappings, for cross-checking the constants in
// pkg/protocol when bumping versions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
	"github.com/tidwall/gjson"
)

func main() {
	var (
		base     = flag.String("base", "https://github.com/PrismarineJS/minecraft-data.git", "base url")
		platform = flag.String("platform", "pc", "platform of schemas")
		ver      = flag.String("version", "1.19", "version of schemas")
		state    = flag.String("state", "play", "protocol state to dump (handshaking, status, login, play)")
		out      = flag.String("o", "./scheme", "output dir path")
	)
	flag.Parse()

	if *out == "" || *platform == "" || *ver == "" {
		flag.Usage()
		os.Exit(2)
	}

	path := fmt.Sprintf("%s/%s-%s", *out, *platform, *ver)

	if err := os.RemoveAll(path); err != nil {
		log.Fatal(err)
	}

	log.Printf("downloading schemas to %s", path)

	// https://github.com/PrismarineJS/minecraft-data/tree/master/data/pc/1.19
	url := fmt.Sprintf("git::%s//data/%s/%s", *base, *platform, *ver)
	if err := get.Get(path, url); err != nil {
		log.Fatalf("download schemas: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(path, "protocol.json"))
	if err != nil {
		log.Fatalf("read protocol.json: %v", err)
	}

	for _, direction := range []string{"toClient", "toServer"} {
		// The packet-id mapper lives at <state>.<dir>.types.packet[1][0].type[1].mappings.
		mappings := gjson.GetBytes(raw, fmt.Sprintf("%s.%s.types.packet.1.0.type.1.mappings", *state, direction))
		if !mappings.Exists() {
			log.Fatalf("no packet mappings for %s.%s", *state, direction)
		}

		fmt.Printf("%s %s:\n", *state, direction)
		mappings.ForEach(func(id, name gjson.Result) bool {
			fmt.Printf("  %s  %s\n", id.String(), name.String())
			return true
		})
	}
}
