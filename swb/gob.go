package swb

import (
	"encoding/gob"
	"fmt"
	"os"
)

// SaveGob writes the ensemble to a binary gob file.
func (e *Ensemble) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" ensemble.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(e); err != nil {
		return fmt.Errorf(" ensemble.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobEnsemble reads an ensemble saved with SaveGob.
func LoadGobEnsemble(fp string) (*Ensemble, error) {
	var e Ensemble
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	enc := gob.NewDecoder(f)
	err = enc.Decode(&e)
	if err != nil {
		return nil, err
	}
	f.Close()
	return &e, nil
}
