package commands

// Sample exports used by `reconcile --sample`.
const (
	sample2B = "Invoice ID,Supplier GSTIN,2B Amount\nINV123,29ABCDE1234F1Z5,10000\nINV124,29ABCDE1234F1Z5,8500"
	sample3B = "Invoice ID,Supplier GSTIN,3B Amount\nINV123,29ABCDE1234F1Z5,8500\nINV124,29ABCDE1234F1Z5,8500"
)
