package store

import "github.com/inovacc/katasync/internal/model"

// LoadConfig reads the user configuration. Missing keys stay empty.
func LoadConfig(st Store) (*model.Config, error) {
	var cfg model.Config

	fields := []struct {
		key string
		dst *string
	}{
		{KeyAccountUsername, &cfg.AccountUsername},
		{KeyAccessToken, &cfg.AccessToken},
		{KeyRemoteAccountName, &cfg.RemoteAccountName},
		{KeyRepository, &cfg.Repository},
	}

	for _, f := range fields {
		value, _, err := st.Get(f.key)
		if err != nil {
			return nil, err
		}

		*f.dst = value
	}

	return &cfg, nil
}

// SaveConfig stores the non-empty fields of cfg.
func SaveConfig(st Store, cfg model.Config) error {
	fields := map[string]string{
		KeyAccountUsername:   cfg.AccountUsername,
		KeyAccessToken:       cfg.AccessToken,
		KeyRemoteAccountName: cfg.RemoteAccountName,
		KeyRepository:        cfg.Repository,
	}

	for key, value := range fields {
		if value == "" {
			continue
		}

		if err := st.Set(key, value); err != nil {
			return err
		}
	}

	return nil
}

// ResetConfig clears the user configuration. The sync history is kept.
func ResetConfig(st Store) error {
	return st.Remove(KeyAccountUsername, KeyAccessToken, KeyRemoteAccountName, KeyRepository)
}
