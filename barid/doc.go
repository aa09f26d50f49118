// Package barid provides a client for the barid.site disposable email API.
//
// A Client is bound to one inbox address. The address doubles as the inbox
// identifier; there is no other authentication. The service only accepts
// addresses on its own domains, which Domains lists.
//
// # Usage
//
//	client, err := barid.NewClient("someone@iusearch.lol",
//		barid.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	emails, err := client.ListMessages(ctx, 10, 0)
//
// # Error Handling
//
// Failed calls return exactly one of:
//
//   - *ValidationError: the service rejected the input
//   - *DomainError: the inbox domain is not supported; SupportedDomains lists
//     the accepted ones
//   - *NotFoundError: the message, inbox or attachment does not exist
//
// Each also matches its sentinel (ErrValidation, ErrDomain, ErrNotFound)
// with errors.Is. Connection and decoding failures are returned as
// *TransportError, and responses that break the API contract wrap
// ErrMalformedResponse.
//
//	var domainErr *barid.DomainError
//	if errors.As(err, &domainErr) {
//		fmt.Println("try one of", domainErr.SupportedDomains)
//	}
//
// Calls with an empty message or attachment ID return a *NotFoundError
// without contacting the service.
package barid
