package file

import "errors"

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrNotOwner       = errors.New("you do not own this file")
	ErrFolderNotYours = errors.New("folder does not belong to your storage")
	ErrRestrictedType = errors.New("uploading this type of file is not supported")
	ErrNameTooLong    = errors.New("file name may not be longer than 255 characters")
)
