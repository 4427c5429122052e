package entrypoint

import "encoding/json"

// unmarshalLoose decodes already jsonc-cleaned bytes into dst, returning
// false instead of an error on malformed manifests: a broken package.json
// degrades entry-point seeding, it never aborts analysis.
func unmarshalLoose(clean []byte, dst interface{}) bool {
	return json.Unmarshal(clean, dst) == nil
}
