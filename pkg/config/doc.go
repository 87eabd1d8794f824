/*
Package config holds the parameters of a replacement run.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +-------+-------+-------+-------+
	   |       |               |       |
	 YAML     HCL            JSON    RETOKEN_* env
	 Parser   Parser         Parser  (+ .env file)

🎯 Purpose:
- Carries the root, extension, search token and replacement token explicitly
- Validates them before any file is touched
- Rejects replacement values that are still unfilled placeholders

🔄 Precedence (lowest first):
1. Default()
2. config file (Load)
3. environment (ApplyEnv, optionally seeded by LoadEnvFile)
4. command line flags (applied by cmd/retoken)

🔍 Example:

	cfg, err := config.Load(ctx, "retoken.yaml", config.Default())
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
*/
package config
