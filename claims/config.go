package claims

func DefaultConfig() Config {
	return Config{
		LeafCacheSize:    1 << 16,
		RootUpdateBuffer: 8,
	}
}

//nolint:lll
type Config struct {
	LeafCacheSize    int `long:"leaf-cache-size"    description:"the maximum number of consumed leaves cached in memory"`
	RootUpdateBuffer int `long:"root-update-buffer" description:"buffered root rotation notifications per subscriber"`
}
