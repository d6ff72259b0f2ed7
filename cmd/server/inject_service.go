package main

import (
	"github.com/google/wire"
	"github.com/mintdao/issuer/service/issuer"
	"github.com/spf13/viper"
)

var serviceSet = wire.NewSet(
	provideIssuerConfig,
	issuer.New,
)

func provideIssuerConfig(v *viper.Viper) issuer.Config {
	return issuer.Config{
		Authority: v.GetString("issuer.authority"),
	}
}
