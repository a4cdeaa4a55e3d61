package utils

import "testing"

func validConfig() *Config {
	return &Config{
		Session: SessionConfig{
			Strategy: SessionStrategyJWT,
			Secret:   "secret",
			TTLHours: 1,
		},
		Security: SecurityConfig{HashCost: DefaultHashCost},
	}
}

func TestConfigValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := validConfig()
	c.Session.Strategy = SessionStrategyDatabase
	c.Session.Secret = ""
	if err := c.Validate(); err != nil {
		t.Fatalf("database strategy needs no secret: %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	cases := map[string]func(c *Config){
		"jwt without secret": func(c *Config) { c.Session.Secret = "" },
		"unknown strategy":   func(c *Config) { c.Session.Strategy = "cookie" },
		"zero ttl":           func(c *Config) { c.Session.TTLHours = 0 },
		"cost too low":       func(c *Config) { c.Security.HashCost = 1 },
		"cost too high":      func(c *Config) { c.Security.HashCost = 99 },
	}
	for name, mutate := range cases {
		c := validConfig()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test, ,http://b.test ")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected list %v", got)
	}
	if splitList("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
