// Package artifact stores generated documents.
//
// Storage is implemented on the local filesystem (LocalStorage) and on
// Amazon S3 or a compatible service (S3Storage). Documents are keyed
// "<tenant>/<catalog version>/<file name>" by Key, so regenerating a catalog
// version replaces the previous artifact.
//
//	key, err := artifact.Key(tenantID, cat.Version, file)
//	if err != nil {
//		return err
//	}
//	obj, err := store.Save(ctx, key, file)
//
// Both implementations reject keys that would escape their root and report
// a missing artifact as ErrFileNotFound.
package artifact
