// Package trainer provides the per-epoch training loop shared by all models.
// The gradient steps themselves are run by the numerical framework, the loop
// validates after every epoch, records history and notifies callbacks.
package trainer
