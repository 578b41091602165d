// Package services contains the workflow services of the papergrader client.
// They sit between the views and the API client: reads go through the query
// cache, mutations invalidate exactly the keys they affect, and client-side
// validation rejects incomplete input before any network call.
package services
