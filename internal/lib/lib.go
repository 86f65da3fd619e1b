// Package lib holds integrations that do not belong to a single layer.
//
// Subpackages:
//   - job: the Asynq job queue. The service layer enqueues tasks and the
//     embedded worker server processes them.
//   - email: the Resend client and the embedded HTML templates.
//
// The registration flow ties them together:
//
//	POST /register -> AuthService.Register -> JobService.EnqueueWelcomeEmail
//	  -> Redis -> handleWelcomeEmailTask -> email.Client.SendWelcomeEmail
package lib
