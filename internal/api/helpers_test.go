package api_test

import "golang.org/x/oauth2"

func oauth2Endpoint(base string) oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   base + "/login/oauth/authorize",
		TokenURL:  base + "/login/oauth/access_token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}
