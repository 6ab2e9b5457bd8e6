package folder

import "errors"

var (
	ErrFolderNotFound      = errors.New("folder not found")
	ErrNotOwner            = errors.New("folder does not belong to your storage")
	ErrRootFolderProtected = errors.New("deleting the root folder is not allowed")
	ErrNameTooLong         = errors.New("folder name may not be longer than 255 characters")
	ErrNameRequired        = errors.New("folder name is required")
)
