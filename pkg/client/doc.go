// package client provides a thin wrapper around the controller-runtime client.
//
// It provides standard operations (such as Get, Patch, Delete) for interacting with the cluster hosting the
// DevWorkspace operator as well as helper functions for inspecting workspaces, their pods, events and logs, and
// for running commands inside workspace containers over the api-server exec subresource.
//
// Note: The client when created is set to use lazy discovery and doesn't pre-cache CRDs from the cluster.
// DevWorkspace resources are handled as unstructured objects so no generated types are required.
//
// For the full list of available functions make sure to also check [cr.Client] for the controller-runtime methods.
package client
