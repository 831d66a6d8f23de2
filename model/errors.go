package model

import "errors"

// ErrInitialized is returned by Build and Load on a model which already has a network
var ErrInitialized = errors.New("model is initialized")

// ErrNotInitialized is returned before Build or Load was called
var ErrNotInitialized = errors.New("model is not initialized, call build or load method first")

// ErrNotCompiled is returned by Train and Verify before Compile
var ErrNotCompiled = errors.New("model is not compiled yet, call compile first")

// ErrUnknownVariant is returned for a model type which is not registered
var ErrUnknownVariant = errors.New("no such model")

// ErrAbstractVariant is returned for a model type which lacks a topology or a head
var ErrAbstractVariant = errors.New("abstract model")
