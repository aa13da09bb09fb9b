/*
Package tollsdk is a Go client for the tollgate token service.

	client := tollsdk.NewClient("http://localhost:3000")

	// Exchange client credentials for a bearer token.
	session, err := client.Authenticate(ctx, "workshop_client", "workshop_secret_123")

	// Call the protected resource with it.
	data, err := session.GetData(ctx)

	// Revoke the token server-side.
	err = session.Logout(ctx)

Failed calls return a *Error carrying the HTTP status and the service's
machine-readable kind, so callers can branch with errors.As:

	var apiErr *tollsdk.Error
	if errors.As(err, &apiErr) && apiErr.Kind == tollsdk.KindTokenExpired {
		session, err = client.Authenticate(ctx, id, secret)
	}
*/
package tollsdk
