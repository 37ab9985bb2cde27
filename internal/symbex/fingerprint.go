package symbex

import "github.com/google/uuid"

var fingerprintNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/viperproject/viper-ide/symbex/state"))

// Fingerprint returns a name-based UUID of the state's rendered form.
// States that render identically share a fingerprint; use model.Equal
// when sorts of otherwise identical literals must be told apart.
func Fingerprint(s *State) uuid.UUID {
	return uuid.NewSHA1(fingerprintNamespace, []byte(s.String()))
}
