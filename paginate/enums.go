package paginate

// Edit script operation.
// ENUM(insertText, deleteText, setProps, highlight, insertElement, removeElement)
type Op int
